package handlers

import (
	"html/template"

	"drowsiness-dashboard/internal/domain/models"
)

const (
	tripsPageName = "trips.html"
	loginPageName = "login.html"
)

type tripsPageData struct {
	Rows      []models.TripListingRow
	Summary   models.ListingSummary
	Error     string
	RequestID string
}

const tripsPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Trips</title>
</head>
<body>
<h1>Trips</h1>
<form method="post" action="/logout"><button type="submit">Log out</button></form>
{{if .Error}}<p class="error">{{.Error}}{{if .RequestID}} (request {{.RequestID}}){{end}}</p>
{{else if not .Rows}}<p class="empty">No trips found.</p>
{{else}}<table id="trips">
<thead><tr><th>ID</th><th>Date / Time</th><th>Blinks</th><th>Head nods</th><th>Yawns</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Timestamp}}</td><td>{{.BlinkCount}}</td><td>{{.HeadNodCount}}</td><td>{{.YawnCount}}</td></tr>
{{end}}</tbody>
<tfoot><tr><td colspan="2">{{.Summary.Trips}} trips</td><td>{{.Summary.TotalBlinks}}</td><td>{{.Summary.TotalHeadNods}}</td><td>{{.Summary.TotalYawns}}</td></tr></tfoot>
</table>
<p><a href="/api/trips/report.pdf">Download PDF</a></p>
{{end}}</body>
</html>
`

type loginPageData struct {
	Next     string
	Username string
	Error    string
}

const loginPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Log in</title>
</head>
<body>
<h1>Log in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>
{{end}}<form method="post" action="/login">
<input type="hidden" name="next" value="{{.Next}}">
<label>Username <input type="text" name="username" value="{{.Username}}" autocomplete="username" required></label>
<label>Password <input type="password" name="password" autocomplete="current-password" required></label>
<button type="submit">Log in</button>
</form>
</body>
</html>
`

// PageTemplates holds every HTML page and is installed on the engine with
// SetHTMLTemplate.
func PageTemplates() *template.Template {
	t := template.Must(template.New(tripsPageName).Parse(tripsPageHTML))
	template.Must(t.New(loginPageName).Parse(loginPageHTML))
	return t
}

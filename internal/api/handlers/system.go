package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
)

const serverVersion = "1.0.0"

// HealthCheck reports service and datastore health
func HealthCheck(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := map[string]models.HealthCheck{}

		status := "healthy"
		httpStatus := http.StatusOK

		if services.IsHealthy() {
			checks["database"] = models.HealthCheck{Status: "ok"}
		} else {
			checks["database"] = models.HealthCheck{Status: "down", Message: "database unreachable"}
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, models.HealthCheckResponse{
			Status:    status,
			Timestamp: time.Now().Unix(),
			Version:   serverVersion,
			Checks:    checks,
		})
	}
}

// Ping is a minimal liveness probe
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// LoginPage serves the login form shell. Static assets hang off /static/.
func LoginPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, loginHTML)
}

// DashboardPage serves the authenticated app shell
func DashboardPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, dashboardHTML)
}

const loginHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Transera CRM — Sign in</title>
  <link rel="stylesheet" href="/static/css/app.css">
</head>
<body>
  <main class="login">
    <h1>Transera CRM</h1>
    <form id="login-form" method="post">
      <input type="email" name="email" placeholder="Email" autocomplete="username" required>
      <input type="password" name="password" placeholder="Password" autocomplete="current-password" required>
      <button type="submit">Sign in</button>
      <p id="login-error" hidden></p>
    </form>
  </main>
  <script src="/static/js/login.js"></script>
</body>
</html>
`

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Transera CRM</title>
  <link rel="stylesheet" href="/static/css/app.css">
</head>
<body>
  <div id="app" data-ws-path="/ws/activity"></div>
  <script src="/static/js/app.js"></script>
</body>
</html>
`

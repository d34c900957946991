// Package webapp is the demo login application the suite runs against when
// no externally hosted application URL is given. It is deliberately small:
// one login form, no sessions, no persistence. The harness owns its
// lifecycle the same way it owns any other supporting service.
package webapp

import (
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"time"
)

type loginPageData struct {
	Username     string
	Password     string
	Notification string
}

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
<div id="notification">{{.Notification}}</div>
<form id="login-form" method="post" action="/login">
  <label>Username <input type="text" name="username" value="{{.Username}}"></label>
  <span id="username-display"></span>
  <label>Password <input type="password" name="password" value="{{.Password}}"></label>
  <span id="password-display"></span>
  <button type="submit">Log in</button>
  <input type="reset" value="Clear">
</form>
<script>
(function() {
  var form = document.getElementById('login-form');
  var user = form.elements['username'];
  var pass = form.elements['password'];
  var userDisplay = document.getElementById('username-display');
  var passDisplay = document.getElementById('password-display');
  user.addEventListener('input', function() { userDisplay.textContent = user.value; });
  pass.addEventListener('input', function() { passDisplay.textContent = pass.value; });
  form.addEventListener('reset', function() {
    setTimeout(function() {
      userDisplay.textContent = '';
      passDisplay.textContent = '';
    }, 0);
  });
})();
</script>
</body>
</html>
`))

// Notification messages. Tests match on the "Invalid" and "Success"
// substrings, so those words must stay in place.
const (
	invalidMessage = "Invalid username or password."
	successMessage = "Success! You are now logged in."
)

// App is the login application. It validates submitted credentials against
// a single configured admin pair.
type App struct {
	adminUser string
	adminPass string
	mux       *http.ServeMux
}

func NewApp(adminUser, adminPass string) *App {
	a := &App{adminUser: adminUser, adminPass: adminPass}
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.serveRoot)
	mux.HandleFunc("/login", a.serveLogin)
	a.mux = mux
	return a
}

func (a *App) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	a.mux.ServeHTTP(w, req)
}

func (a *App) serveRoot(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	http.Redirect(w, req, "/login", http.StatusFound)
}

func (a *App) serveLogin(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		a.render(w, loginPageData{})
	case http.MethodPost:
		if err := req.ParseForm(); err != nil {
			http.Error(w, "malformed form submission", http.StatusBadRequest)
			return
		}
		username := req.PostFormValue("username")
		password := req.PostFormValue("password")
		if username == a.adminUser && password == a.adminPass {
			a.render(w, loginPageData{Notification: successMessage})
			return
		}
		// The submitted values stay in the fields so the user can correct
		// just the part that was wrong.
		a.render(w, loginPageData{
			Username:     username,
			Password:     password,
			Notification: invalidMessage,
		})
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *App) render(w http.ResponseWriter, data loginPageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTemplate.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Server hosts an App on a local port for the duration of a suite run.
type Server struct {
	URL      string
	listener net.Listener
	server   *http.Server
}

// StartServer begins serving the app on the given port. Port 0 picks a
// free port; the chosen address is in Server.URL.
func StartServer(app *App, port int) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("cannot listen on port %d: %w", port, err)
	}
	server := &http.Server{Handler: app}
	go func() {
		_ = server.Serve(listener)
	}()
	return &Server{
		URL:      fmt.Sprintf("http://%s", listener.Addr()),
		listener: listener,
		server:   server,
	}, nil
}

func (s *Server) Close() error {
	return s.server.Close()
}

// WaitReady polls the application URL until it answers any request with a
// non-5xx status, or the timeout elapses. Progress dots are written to
// output so a slow-starting external app is visible on the console.
func WaitReady(url string, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Waiting for application at %s", url)
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := http.DefaultClient.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 500 {
				fmt.Fprintln(output)
				return nil
			}
			err = fmt.Errorf("application returned status code %d", resp.StatusCode)
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

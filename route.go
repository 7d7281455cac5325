package grantview

import (
	"fmt"
	"net/url"
	"strings"
)

// Screen identifies a top-level view.
type Screen int

// Screen constants.
const (
	ScreenUpload Screen = iota
	ScreenResults
	ScreenSettings
)

func (s Screen) String() string {
	switch s {
	case ScreenUpload:
		return "upload"
	case ScreenResults:
		return "results"
	case ScreenSettings:
		return "settings"
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// Route is the navigation state of the interactive client. It is passed
// explicitly to whatever renders it.
type Route struct {
	Screen       Screen
	EvaluationID string
}

// UploadRoute is the entry view.
func UploadRoute() Route {
	return Route{Screen: ScreenUpload}
}

// ResultsRoute shows the evaluation with the given id.
func ResultsRoute(id string) Route {
	return Route{Screen: ScreenResults, EvaluationID: id}
}

// SettingsRoute is the settings page.
func SettingsRoute() Route {
	return Route{Screen: ScreenSettings}
}

// Path renders the route as a path such as "/results/ev_123".
func (r Route) Path() string {
	switch r.Screen {
	case ScreenResults:
		return "/results/" + url.PathEscape(r.EvaluationID)
	case ScreenSettings:
		return "/settings"
	}
	return "/"
}

// ParseRoute parses a path produced by Route.Path.
func ParseRoute(path string) (Route, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return UploadRoute(), nil
	}
	head, rest, _ := strings.Cut(trimmed, "/")
	switch head {
	case "settings":
		if rest == "" {
			return SettingsRoute(), nil
		}
	case "results":
		id, err := url.PathUnescape(rest)
		if err == nil && id != "" && !strings.Contains(rest, "/") {
			return ResultsRoute(id), nil
		}
	}
	return Route{}, fmt.Errorf("unknown route %q", path)
}

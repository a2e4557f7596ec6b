package data

import (
	projectservice "github.com/thenoetrevino/qitrack/internal/services/project"
)

func projectRequest(title string) projectservice.CreateProjectRequest {
	return projectservice.CreateProjectRequest{Title: title}
}

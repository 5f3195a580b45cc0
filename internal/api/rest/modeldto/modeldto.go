// Package modeldto provides locally used types and their structure for data transfer objects.
package modeldto

import (
	"time"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/charts"
)

type (
	ResponseCharts struct {
		Short       string      `json:"short"`
		ShortURL    string      `json:"shortURL"`
		Clicks      int         `json:"clicks"`
		LastUpdated time.Time   `json:"lastUpdated"`
		Charts      *charts.Set `json:"charts"`
	}

	ResponseError struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
)

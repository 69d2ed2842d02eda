package app

import (
	"github.com/mbolis/case-report/config"
	"github.com/mbolis/case-report/httpx"
	"github.com/mbolis/case-report/metrics"
	"github.com/mbolis/case-report/session"
)

type App struct {
	config.Config
	Sessions    *session.Store
	Transmitter *httpx.FormTransmitter
	Metrics     *metrics.Metrics
}

// New wires the transmitter and session store to the metrics collectors.
func New(cfg config.Config, m *metrics.Metrics) App {
	transmitter := httpx.NewFormTransmitter(cfg.SubmitURL, cfg.SubmitTimeout)
	transmitter.OnResult = m.ObserveTransmission

	sessions := session.NewStore(transmitter, cfg.SessionTTL)
	sessions.OnCountChange = m.SetSessions

	return App{
		Config:      cfg,
		Sessions:    sessions,
		Transmitter: transmitter,
		Metrics:     m,
	}
}

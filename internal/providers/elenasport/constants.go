package elenasport

import "time"

const (
	providerName       = "elenasport"
	defaultBaseURL     = "https://elenasport-io1.p.rapidapi.com"
	defaultHost        = "elenasport-io1.p.rapidapi.com"
	defaultHTTPTimeout = 15 * time.Second
	defaultMaxPages    = 20
	errorBodyLimit     = 512
)

package web

import "embed"

// StaticFS holds the embedded static assets served under /static/.
//
//go:embed static/*
var StaticFS embed.FS

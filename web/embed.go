package web

import "embed"

// Static embeds the frontend assets.
//
//go:embed static/*
var Static embed.FS

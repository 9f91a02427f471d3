package version

// AppVersion is overridden at build time via -ldflags "-X cliprobe/internal/version.AppVersion=...".
var AppVersion = "0.1.0"

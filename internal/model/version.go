package model

// Version is the released version, overridden at build time with
// -ldflags "-X searchviz/internal/model.Version=...".
var Version = "v0.3.0"

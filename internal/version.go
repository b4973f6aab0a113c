package internal

// Version is the zhuyinaudio release, overridden at build time via
// -ldflags "-X codeberg.org/snonux/zhuyinaudio/internal.Version=...".
var Version = "0.3.0"

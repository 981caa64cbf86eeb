package internal

// Version is the bgrhyme release.
const Version = "0.1.0"

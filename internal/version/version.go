package version

// Version is the current version of lvmnav.
const Version = "0.3.2"

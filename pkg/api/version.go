package api

// Version is the SDK release identifier, reported in the User-Agent header.
const Version = "0.3.0"

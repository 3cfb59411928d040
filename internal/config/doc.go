// Package config provides configuration loading, merging, and validation
// facilities for the bookmarks server and client.
//
// Configuration is assembled from multiple sources in the following priority
// order (a field keeps the first non-zero value found):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the terminal client.
package config

// Package component defines the lifecycle interface shared by managed
// infrastructure such as httpclient.Component, and a Registry that starts
// components in order and stops them in reverse.
package component

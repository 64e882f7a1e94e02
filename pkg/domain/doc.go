// Package domain contains the core types shared by the marking pipeline:
// line records, output destinations and run reports. These types are free of
// I/O concerns so they can be shared across packages.
package domain

// Package utils holds small helpers shared by commands and features, such as
// parsing and printing game form ids.
package utils

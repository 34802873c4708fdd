// Package prompt fills a page form interactively in the terminal and returns
// the answers as a submission.
package prompt

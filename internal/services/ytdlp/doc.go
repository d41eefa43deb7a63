// Package ytdlp wraps the generic URL downloader CLI used as the second
// acquisition strategy.
package ytdlp

// Package render turns cards and statistics reports into text for people and
// machines: styled terminal output, JSON, YAML, HTML, and the Q:/A:/C: markdown
// that card files are written in.
package render

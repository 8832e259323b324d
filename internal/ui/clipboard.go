package ui

import (
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// overlay draws top over base line by line; whitespace-only lines of top
// are transparent.
func overlay(base, top string) string {
	bLines := strings.Split(base, "\n")
	tLines := strings.Split(top, "\n")
	n := max(len(bLines), len(tLines))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(tLines) && strings.TrimSpace(tLines[i]) != "":
			out[i] = tLines[i]
		case i < len(bLines):
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

// copyToClipboard sends s to the terminal clipboard with OSC 52.
func copyToClipboard(s string) {
	payload := fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(stripANSI(s))))
	// /dev/tty keeps the escape out of the program's own output
	if f, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
		defer f.Close()
		_, _ = f.WriteString(payload)
		return
	}
	fmt.Fprint(os.Stdout, payload)
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

package basic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

//
// Console output runs through the session's Output writer so tests
// and embedders can capture it.  The cursor position feeds the print
// zone logic: ',' in a PRINT advances to the next zoneWidth-column
// boundary, wrapping to a fresh line once the zones are used up
//

func (ip *Interp) write(msg string) {

	if _, err := io.WriteString(ip.out(), msg); err != nil {
		runtimeErrorf(EIOERROR, "write: %v", err)
	}

	ip.cursorPos += len(msg)
}

func (ip *Interp) newline() {

	if _, err := io.WriteString(ip.out(), "\n"); err != nil {
		runtimeErrorf(EIOERROR, "write: %v", err)
	}

	ip.cursorPos = 0
	ip.outputZone = 0
}

func (ip *Interp) tabZone() {

	ip.outputZone = ip.cursorPos / zoneWidth

	if ip.outputZone+1 >= ip.zones() {
		ip.newline()
		return
	}

	pad := zoneWidth - ip.cursorPos%zoneWidth
	ip.write(strings.Repeat(" ", pad))
	ip.outputZone++
}

func (ip *Interp) out() io.Writer {

	if ip.Output != nil {
		return ip.Output
	}

	return os.Stdout
}

func (ip *Interp) zones() int {

	if ip.numZones > 0 {
		return ip.numZones
	}

	return 80 / zoneWidth
}

//
// SetWidth sizes the print zones from a terminal width.  The harness
// calls this with the real window size
//

func (ip *Interp) SetWidth(cols int) {

	if cols >= zoneWidth {
		ip.numZones = cols / zoneWidth
	}
}

//
// Numbers print in fixed 6-decimal form
//

func formatNumber(val float64) string {

	return fmt.Sprintf("%.6f", val)
}

//
// readLine blocks for one line of console input.  The default reader
// comes from standard input; the harness swaps in a line editor.  A
// read failure (^C, ^D, closed input) aborts the running statement
//

func (ip *Interp) readLine(prompt string) string {

	fn := ip.ReadLine
	if fn == nil {
		if ip.stdinReader == nil {
			ip.stdinReader = bufio.NewReader(os.Stdin)
		}
		fn = ip.defaultReadLine
	}

	line, err := fn(prompt)
	if err != nil {
		runtimeError(EINTERRUPTED)
	}

	return line
}

func (ip *Interp) defaultReadLine(prompt string) (string, error) {

	if _, err := io.WriteString(ip.out(), prompt); err != nil {
		return "", err
	}

	line, err := ip.stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (ip *Interp) traceLine(node *lineNode) {

	fmt.Fprintf(os.Stderr, "exec %s\n", formatLine(node))
}

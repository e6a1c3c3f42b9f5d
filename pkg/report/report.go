package report

import (
	"encoding/xml"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"
)

const FormatVersion = "1.0"

// Header is written once at the top of a teardown report.
type Header struct {
	Version string  `xml:"-"`
	Creator Creator `xml:"creator"`
	Source  Source  `xml:"source"`
}

// Creator describes the program and environment that produced the report.
type Creator struct {
	XMLName              xml.Name `xml:"creator"`
	Package              string   `xml:"package"`
	Version              string   `xml:"version"`
	ExecutionEnvironment ExecEnv  `xml:"execution_environment"`
}

// ExecEnv describes the host the report was generated on.
type ExecEnv struct {
	OS    string `xml:"os"`
	Arch  string `xml:"arch"`
	Host  string `xml:"host"`
	UID   int    `xml:"uid"`
	Start string `xml:"start_time"`
}

// Source describes the table being torn down.
type Source struct {
	XMLName    xml.Name `xml:"source"`
	SymbolFile string   `xml:"symbol_file,omitempty"`
	Buckets    int      `xml:"buckets"`
	Symbols    int      `xml:"symbols"`
}

// Undefined records one entry leaving the table.
type Undefined struct {
	XMLName xml.Name `xml:"undefined"`
	Seq     int      `xml:"seq,attr"`
	Bucket  int      `xml:"bucket,attr"`
	Name    string   `xml:"name"`
	Type    uint32   `xml:"type"`
	Value   string   `xml:"value"`
}

// GetExecEnv retrieves runtime information to populate the ExecEnv struct.
func GetExecEnv() ExecEnv {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	if u, err := user.Current(); err == nil {
		if n, err := strconv.Atoi(u.Uid); err == nil {
			uid = n
		}
	}

	return ExecEnv{
		OS:    runtime.GOOS,
		Arch:  runtime.GOARCH,
		Host:  host,
		UID:   uid,
		Start: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

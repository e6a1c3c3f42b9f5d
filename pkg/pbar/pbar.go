// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// ProgressBarState holds all the data needed to render the progress of a bulk load.
type ProgressBarState struct {
	Total     int
	Processed int
	Defined   int
	Rejected  int

	StartTime          time.Time
	LastUpdateTime     time.Time
	LastProcessedCount int

	out io.Writer
}

// NewProgressBarState initializes a new ProgressBarState writing to w.
func NewProgressBarState(w io.Writer, total int) *ProgressBarState {
	return &ProgressBarState{
		Total:     total,
		StartTime: time.Now(),
		out:       w,
	}
}

// Render prints the progress line, at most once every MinRefreshRate unless force is set.
func (pbs *ProgressBarState) Render(force bool) {
	if !force && !pbs.LastUpdateTime.IsZero() && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}

	percentage := 100.0
	if pbs.Total > 0 {
		percentage = float64(pbs.Processed) / float64(pbs.Total) * 100
	}

	filledLen := min(barLength, int(float64(barLength)*percentage/100))
	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	since := pbs.LastUpdateTime
	if since.IsZero() {
		since = pbs.StartTime
	}

	var rate float64
	if elapsed := time.Since(since).Seconds(); elapsed > 0 {
		rate = float64(pbs.Processed-pbs.LastProcessedCount) / elapsed
	}

	pbs.LastUpdateTime = time.Now()
	pbs.LastProcessedCount = pbs.Processed

	// \r rewinds to the start of the line; trailing spaces clear a longer previous line
	fmt.Fprintf(pbs.out, "\r[INFO] Loading: [%s] %3.0f%% (%d/%d) | Defined: %d | Rejected: %d | @ %.0f sym/s    ",
		bar,
		percentage,
		pbs.Processed,
		pbs.Total,
		pbs.Defined,
		pbs.Rejected,
		rate)
}

// Finish renders the final state and moves to the next line.
func (pbs *ProgressBarState) Finish() {
	pbs.Render(true)
	fmt.Fprintln(pbs.out)
}

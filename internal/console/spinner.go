package console

import (
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	spinnerInterval = 100 * time.Millisecond
	spinnerType     = 14
)

// Start shows an indeterminate spinner on stderr until the returned function
// is called. Nothing is drawn when stderr is not a terminal. The stop function
// is safe to call more than once.
func (console *Console) Start(description string) func() {
	if !console.spinnerEnabled {
		return func() {}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(console.stderr),
		progressbar.OptionSpinnerType(spinnerType),
		progressbar.OptionEnableColorCodes(console.colorEnabled),
		progressbar.OptionClearOnFinish(),
	)
	stopSignal := make(chan struct{})
	var tickerDone sync.WaitGroup
	tickerDone.Add(1)
	go func() {
		defer tickerDone.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopSignal:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() {
			close(stopSignal)
			tickerDone.Wait()
			_ = bar.Finish()
		})
	}
}

package bootstrap

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/svcregistry/di"
)

// Summary prints what the application built during startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display writes the header and one tree line per registration, with the
// types each instance was built from.
func (s *Summary) Display(w io.Writer, regs []di.RegistrationInfo) {
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if len(regs) == 0 {
		fmt.Fprintf(w, "Registry is empty\n\n")
		return
	}

	fmt.Fprintf(w, "Services (%d)\n", len(regs))
	for i, r := range regs {
		prefix := "├──"
		if i == len(regs)-1 {
			prefix = "└──"
		}
		marker := ""
		if r.Injected {
			marker = " [inject]"
		}
		line := fmt.Sprintf("   %s %s via %s%s", prefix, r.Type, r.Constructor, marker)
		if len(r.Params) > 0 {
			line += " <- " + strings.Join(r.Params, ", ")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

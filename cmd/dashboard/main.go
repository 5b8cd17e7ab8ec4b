// Command dashboard is a terminal front end for the weather dashboard API.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"weather-dashboard/internal/client"
)

func main() {
	var (
		baseURL  = flag.String("api", envOr("DASHBOARD_API_URL", "http://localhost:5000"), "backend base URL")
		location = flag.String("location", "", "city to show current weather for")
		from     = flag.String("from", "", "history start date (YYYY-MM-DD)")
		to       = flag.String("to", "", "history end date (YYYY-MM-DD)")
		timeout  = flag.Duration("timeout", 15*time.Second, "request timeout")
	)
	flag.Parse()

	api := client.NewAPIClient(*baseURL, &http.Client{Timeout: *timeout})
	c := client.NewController(api)
	defer c.Close()

	if *location != "" {
		c.SelectLocation(*location)
	}
	if *from != "" || *to != "" {
		c.RequestHistory(*from, *to)
	}
	c.Wait()

	if err := render(os.Stdout, c.State()); err != nil {
		os.Exit(1)
	}
}

func render(w io.Writer, s client.State) error {
	if s.DateError != "" {
		fmt.Fprintln(w, "date range:", s.DateError)
	}
	if msg := s.CurrentStatus.Error; msg != "" {
		fmt.Fprintln(w, "current weather error:", msg)
	}
	if msg := s.HistoryStatus.Error; msg != "" {
		fmt.Fprintln(w, "history error:", msg)
	}

	if s.Current != nil {
		fmt.Fprintln(w, s.Current.Date)
		fmt.Fprintln(w, s.Current.Summary)
		fmt.Fprintf(w, "Pressure: %g hPa\n", s.Current.Pressure)
	}

	if len(s.History) > 0 {
		fmt.Fprintln(w, "\nHistory")
		for _, e := range s.History {
			fmt.Fprintf(w, "%-12s %6.1f°C  %s\n", e.Date, e.Temperature, e.Condition)
		}
	}

	if s.DateError != "" || s.Error() != "" {
		return fmt.Errorf("request failed")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

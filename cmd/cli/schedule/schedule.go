package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridwatch/dominion-schedule/cmd/cli/config"
	"github.com/gridwatch/dominion-schedule/cmd/cli/output"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// InitSchedule registers the schedule query commands on the root command.
func InitSchedule(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		designationCmd(),
		nextCmd(),
		todayCmd(),
		upcomingCmd(),
		summaryCmd(),
		healthCmd(),
	)
}

func designationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "designation",
		Short: "Print just the next designation letter",
		Run: func(cmd *cobra.Command, args []string) {
			body, status, err := apiGet("/api/designation")
			if err != nil {
				fmt.Println(err)
				return
			}
			if status != http.StatusOK {
				fmt.Printf("No designation available (%s)\n", string(body))
				return
			}
			fmt.Println(string(body))
		},
	}
}

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next designation with details",
		Run: func(cmd *cobra.Command, args []string) {
			printJSON("/api/next")
		},
	}
}

func todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's designation",
		Run: func(cmd *cobra.Command, args []string) {
			printJSON("/api/today")
		},
	}
}

func upcomingCmd() *cobra.Command {

	var limit int
	var designation string

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List the upcoming schedule",
		Run: func(cmd *cobra.Command, args []string) {

			path := "/api/upcoming"
			sep := "?"
			if limit > 0 {
				path += fmt.Sprintf("%slimit=%d", sep, limit)
				sep = "&"
			}
			if designation != "" {
				path += sep + "designation=" + designation
			}

			body, status, err := apiGet(path)
			if err != nil {
				fmt.Println(err)
				return
			}
			if status != http.StatusOK {
				fmt.Println("No schedule available")
				return
			}

			var out struct {
				Upcoming []struct {
					Date        string `json:"date"`
					Day         int    `json:"day"`
					Designation string `json:"designation"`
				} `json:"upcoming"`
				Count          int `json:"count"`
				TotalAvailable int `json:"total_available"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				fmt.Println("Invalid response:", err)
				return
			}

			rows := make([][]interface{}, 0, len(out.Upcoming))
			for _, e := range out.Upcoming {
				rows = append(rows, []interface{}{e.Date, e.Day, e.Designation})
			}
			output.RenderTable([]string{"Date", "Day", "Designation"}, rows)
			fmt.Printf("%d of %d entries\n", out.Count, out.TotalAvailable)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most N entries")
	cmd.Flags().StringVar(&designation, "designation", "", "filter by designation letter (A, B, or C)")

	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show summary statistics",
		Run: func(cmd *cobra.Command, args []string) {
			body, status, err := apiGet("/api/summary")
			if err != nil {
				fmt.Println(err)
				return
			}
			if status != http.StatusOK {
				fmt.Println("No schedule available")
				return
			}

			var out struct {
				TotalUpcoming   int     `json:"total_upcoming"`
				ACount          int     `json:"A_count"`
				BCount          int     `json:"B_count"`
				CCount          int     `json:"C_count"`
				NextDesignation *string `json:"next_designation"`
				NextDate        *string `json:"next_date"`
				FetchedAt       string  `json:"fetched_at"`
				ReceivedAt      string  `json:"received_at"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				fmt.Println("Invalid response:", err)
				return
			}

			next := "none"
			if out.NextDesignation != nil && out.NextDate != nil {
				next = fmt.Sprintf("%s on %s", *out.NextDesignation, *out.NextDate)
			}
			output.RenderKV([][2]interface{}{
				{"Next", next},
				{"Upcoming", out.TotalUpcoming},
				{"A", out.ACount},
				{"B", out.BCount},
				{"C", out.CCount},
				{"Fetched", out.FetchedAt},
				{"Received", out.ReceivedAt},
			})
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		Run: func(cmd *cobra.Command, args []string) {
			printJSON("/health")
		},
	}
}

// apiGet performs a GET against the configured API base URL.
func apiGet(path string) ([]byte, int, error) {
	resp, err := httpClient.Get(config.APIURL() + path)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return data, resp.StatusCode, nil
}

// printJSON fetches path and prints the response indented.
func printJSON(path string) {
	body, _, err := apiGet(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

package workouts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/setrep/workout-api/cmd/cli/config"
	"github.com/setrep/workout-api/cmd/cli/output"
	"github.com/spf13/cobra"
)

type workout struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Reps      int       `json:"reps"`
	Load      float64   `json:"load"`
	CreatedAt time.Time `json:"createdAt"`
}

// ==========================
// Init Workouts
// ==========================
func InitWorkouts(rootCmd *cobra.Command) {

	workoutsCmd := &cobra.Command{
		Use:   "workouts",
		Short: "Manage your workouts",
	}

	workoutsCmd.AddCommand(
		listCmd(),
		getCmd(),
		addCmd(),
		updateCmd(),
		removeCmd(),
		searchCmd(),
	)

	rootCmd.AddCommand(workoutsCmd)
}

// ==========================
// LIST
// ==========================
func listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your workouts, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			var out struct {
				Message string    `json:"message"`
				Data    []workout `json:"data"`
			}
			if err := doRequest("GET", "/api/workouts", nil, &out); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				printJSON(out.Data)
				return
			}

			rows := make([][]interface{}, 0, len(out.Data))
			for _, w := range out.Data {
				rows = append(rows, []interface{}{w.ID, w.Title, w.Reps, w.Load, w.CreatedAt.Format(time.RFC3339)})
			}
			output.RenderTable([]string{"ID", "Title", "Reps", "Load", "Created"}, rows)
			fmt.Println(out.Message)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single workout",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var w workout
			if err := doRequest("GET", "/api/workouts/"+args[0], nil, &w); err != nil {
				fmt.Println(err)
				return
			}
			printJSON(w)
		},
	}
}

// ==========================
// ADD
// ==========================
func addCmd() *cobra.Command {
	var title string
	var reps int
	var load float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new workout",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]interface{}{
				"title": title,
				"reps":  reps,
				"load":  load,
			}
			var w workout
			if err := doRequest("POST", "/api/workouts", payload, &w); err != nil {
				fmt.Println(err)
				return
			}
			fmt.Printf("Created workout %s (%s)\n", w.Title, w.ID)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "exercise title")
	cmd.Flags().IntVar(&reps, "reps", 0, "number of reps")
	cmd.Flags().Float64Var(&load, "load", 0, "load in kg")

	return cmd
}

// ==========================
// UPDATE (partial)
// ==========================
func updateCmd() *cobra.Command {
	var title string
	var reps int
	var load float64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a workout",
		Long:  "Only the flags you pass are sent; omitted fields keep their stored values.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("title") {
				payload["title"] = title
			}
			if cmd.Flags().Changed("reps") {
				payload["reps"] = reps
			}
			if cmd.Flags().Changed("load") {
				payload["load"] = load
			}
			if len(payload) == 0 {
				fmt.Println("Nothing to update: pass --title, --reps or --load")
				return
			}

			var w workout
			if err := doRequest("PUT", "/api/workouts/"+args[0], payload, &w); err != nil {
				fmt.Println(err)
				return
			}
			printJSON(w)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "exercise title")
	cmd.Flags().IntVar(&reps, "reps", 0, "number of reps")
	cmd.Flags().Float64Var(&load, "load", 0, "load in kg")

	return cmd
}

// ==========================
// REMOVE
// ==========================
func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a workout",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var out struct {
				Message string  `json:"message"`
				Workout workout `json:"workout"`
			}
			if err := doRequest("DELETE", "/api/workouts/"+args[0], nil, &out); err != nil {
				fmt.Println(err)
				return
			}
			fmt.Printf("%s (%s)\n", out.Message, out.Workout.Title)
		},
	}
}

// ==========================
// SEARCH
// ==========================
func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search your workouts by title",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var titles []struct {
				Title string `json:"title"`
			}
			if err := doRequest("GET", "/api/workouts?q="+url.QueryEscape(args[0]), nil, &titles); err != nil {
				fmt.Println(err)
				return
			}

			rows := make([][]interface{}, 0, len(titles))
			for _, t := range titles {
				rows = append(rows, []interface{}{t.Title})
			}
			output.RenderTable([]string{"Title"}, rows)
		},
	}
}

// ==========================
// HTTP helper
// ==========================
func doRequest(method, path string, payload interface{}, out interface{}) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

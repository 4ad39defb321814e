package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mauv0809/squadup/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(enrollCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(tokenCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the players of a tournament grouped by team",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTournament(); err != nil {
			return err
		}
		return performGetRequest(fmt.Sprintf("/enrollments.json?tournamentID=%d", tourney))
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the team names of a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTournament(); err != nil {
			return err
		}
		return performGetRequest(fmt.Sprintf("/%d/teamnames.json", tourney))
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <battlenet-id>",
	Short: "Show the enrollment record of one player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTournament(); err != nil {
			return err
		}
		return performGetRequest(fmt.Sprintf("/%d/enrollmentinfo.json?bnetID=%s", tourney, url.QueryEscape(args[0])))
	},
}

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll the --as user in a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTournament(); err != nil {
			return err
		}
		return performPostRequest(fmt.Sprintf("/%d/enroll", tourney), nil)
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap <battlenet-id> <battlenet-id>",
	Short: "Swap the teams of two players, acting as the tournament creator",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTournament(); err != nil {
			return err
		}
		form := url.Values{"bnetID1": {args[0]}, "bnetID2": {args[1]}}
		return performPostRequest(fmt.Sprintf("/%d/swap", tourney), form)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a session cookie value for the --as user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cookie, err := sessionCookie()
		if err != nil {
			return err
		}
		if cookie == nil {
			return errors.New("--as is required")
		}
		fmt.Printf("%s=%s\n", cookie.Name, cookie.Value)
		return nil
	},
}

func requireTournament() error {
	if tourney <= 0 {
		return errors.New("--tournament is required")
	}
	return nil
}

// sessionCookie signs a cookie for --as. It returns nil when no user was given.
func sessionCookie() (*http.Cookie, error) {
	if userID <= 0 {
		return nil, nil
	}
	if secret == "" {
		_ = godotenv.Load()
		secret = os.Getenv("SESSION_SECRET")
	}
	if secret == "" {
		return nil, errors.New("no session secret: pass --secret or set SESSION_SECRET")
	}
	return session.NewManager(secret, session.DefaultTTL).Cookie(userID)
}

func performGetRequest(endpoint string) error {
	req, err := http.NewRequest(http.MethodGet, host+endpoint, nil)
	if err != nil {
		return err
	}
	return do(req)
}

func performPostRequest(endpoint string, form url.Values) error {
	req, err := http.NewRequest(http.MethodPost, host+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(req)
}

func do(req *http.Request) error {
	fmt.Printf("Making request to %s\n", req.URL)
	cookie, err := sessionCookie()
	if err != nil {
		return err
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	// redirects are part of the answer
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	if location := resp.Header.Get("Location"); location != "" {
		fmt.Printf("Location: %s\n", location)
	}
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

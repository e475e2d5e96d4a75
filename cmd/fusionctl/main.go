package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lanternsec/fusionkit/pkg/authclient"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// fusionctl is a thin command-line front end over the authclient package,
// useful for poking at a provider instance from a shell: register a user, log
// in, validate a token, refresh a session.

type cli struct {
	Client    *authclient.Client
	OutFormat string // "json" | "text"
}

func (c *cli) print(v any, textLines ...string) {
	if c.OutFormat == "json" {
		p, _ := json.MarshalIndent(v, "", "  ")
		fmt.Println(string(p))
		return
	}
	for _, line := range textLines {
		fmt.Println(line)
	}
}

func main() {
	_ = godotenv.Load(".env")

	var (
		baseURL       = envOr(authclient.EnvBaseURL, "http://localhost:9011")
		apiKey        = os.Getenv(authclient.EnvAPIKey)
		applicationID = os.Getenv(authclient.EnvApplicationID)
		tenantID      = os.Getenv(authclient.EnvTenantID)
		out           = envOr("FUSION_AUTH_OUT", "text")
		timeout       = 30 * time.Second
	)

	c := &cli{}

	root := &cobra.Command{
		Use:           "fusionctl",
		Short:         "Command-line client for a FusionAuth-style identity provider",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client, err := authclient.NewWithHTTPClient(authclient.Config{
				BaseURL:       baseURL,
				APIKey:        apiKey,
				ApplicationID: applicationID,
				TenantID:      tenantID,
			}, &http.Client{Timeout: timeout})
			if err != nil {
				return err
			}
			c.Client = client
			c.OutFormat = out
			return nil
		},
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "provider base URL (env "+authclient.EnvBaseURL+")")
	root.PersistentFlags().StringVar(&apiKey, "api-key", apiKey, "application API key (env "+authclient.EnvAPIKey+")")
	root.PersistentFlags().StringVar(&applicationID, "application-id", applicationID, "application id (env "+authclient.EnvApplicationID+")")
	root.PersistentFlags().StringVar(&tenantID, "tenant-id", tenantID, "tenant id (env "+authclient.EnvTenantID+")")
	root.PersistentFlags().StringVar(&out, "out", out, "output format: json|text")
	root.PersistentFlags().DurationVar(&timeout, "timeout", timeout, "per-request timeout")

	// register
	var regEmail, regPassword, regFirstName, regLastName, regUsername string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user and print the issued tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if regEmail == "" || regPassword == "" {
				return fmt.Errorf("--email and --password are required")
			}
			res, err := c.Client.RegisterUser(cmd.Context(), authclient.RegistrationRequest{
				Email:     regEmail,
				Password:  regPassword,
				FirstName: regFirstName,
				LastName:  regLastName,
				Username:  regUsername,
			})
			if err != nil {
				return describe("register", err)
			}
			c.print(res,
				"user_id:       "+res.UserID,
				"token:         "+res.Token,
				"refresh_token: "+res.RefreshToken,
				"expires_at:    "+formatTime(res.ExpiresAt),
			)
			return nil
		},
	}
	registerCmd.Flags().StringVar(&regEmail, "email", "", "email address (required)")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password (required)")
	registerCmd.Flags().StringVar(&regFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&regLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&regUsername, "username", "", "optional login alias")

	// login
	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginEmail == "" || loginPassword == "" {
				return fmt.Errorf("--email and --password are required")
			}
			res, err := c.Client.Login(cmd.Context(), loginEmail, loginPassword)
			if err != nil {
				return describe("login", err)
			}
			c.print(res,
				"user_id:       "+res.UserID,
				"token:         "+res.Token,
				"refresh_token: "+res.RefreshToken,
				"expires_at:    "+formatTime(res.ExpiresAt),
			)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (required)")

	// validate TOKEN
	validateCmd := &cobra.Command{
		Use:   "validate TOKEN",
		Short: "Check whether an access token is currently valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.Client.ValidateToken(cmd.Context(), args[0])
			if err != nil {
				return describe("validate", err)
			}
			if !res.Valid {
				c.print(res, "invalid")
				os.Exit(1)
			}
			c.print(res, append([]string{"valid"}, formatClaims(res.Claims)...)...)
			return nil
		},
	}

	// refresh REFRESH_TOKEN
	refreshCmd := &cobra.Command{
		Use:   "refresh REFRESH_TOKEN",
		Short: "Exchange a refresh token for a new token pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.Client.RefreshToken(cmd.Context(), args[0])
			if err != nil {
				return describe("refresh", err)
			}
			c.print(res,
				"token:         "+res.Token,
				"refresh_token: "+res.RefreshToken,
				"expires_at:    "+formatTime(res.ExpiresAt),
			)
			return nil
		},
	}

	root.AddCommand(registerCmd, loginCmd, validateCmd, refreshCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// describe prefixes an operation's failure with a stable reason word so shell
// scripts can branch on the first token of stderr.
func describe(op string, err error) error {
	var (
		cfgErr       *authclient.ConfigurationError
		valErr       *authclient.ValidationError
		authErr      *authclient.AuthenticationError
		lockErr      *authclient.AccountLockedError
		protoErr     *authclient.ProtocolMismatchError
		notRefErr    *authclient.TokenNotRefreshableError
		transportErr *authclient.TransportError
	)

	switch {
	case errors.As(err, &cfgErr):
		return fmt.Errorf("configuration: %s: %v", op, err)
	case errors.As(err, &valErr):
		var b strings.Builder
		fmt.Fprintf(&b, "rejected: %s:", op)
		for _, field := range sortedFields(valErr.FieldErrors) {
			for _, msg := range valErr.Messages(field) {
				fmt.Fprintf(&b, "\n  %s: %s", field, msg)
			}
		}
		for _, g := range valErr.GeneralErrors {
			fmt.Fprintf(&b, "\n  %s", g.Message)
		}
		return errors.New(b.String())
	case errors.As(err, &authErr):
		return fmt.Errorf("unauthorized: %s: invalid credentials", op)
	case errors.As(err, &lockErr):
		return fmt.Errorf("locked: %s: account is locked", op)
	case errors.As(err, &protoErr):
		return fmt.Errorf("protocol: %s: %v", op, err)
	case errors.As(err, &notRefErr):
		return fmt.Errorf("expired: %s: token is no longer refreshable, log in again", op)
	case errors.As(err, &transportErr):
		return fmt.Errorf("transport: %s: %v", op, transportErr.Err)
	default:
		return fmt.Errorf("provider: %s: %v", op, err)
	}
}

func sortedFields(m map[string][]authclient.FieldMessage) []string {
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func formatClaims(claims map[string]any) []string {
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %s: %v", k, claims[k]))
	}
	return lines
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

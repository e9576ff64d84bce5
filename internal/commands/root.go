package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/client"
	"github.com/sea-catering/storefront/internal/cliconfig"
	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/observability"
	"github.com/sea-catering/storefront/internal/session"
	"github.com/sea-catering/storefront/internal/storefront"
)

// routeAnnotation names the storefront route whose guard a command runs behind.
const routeAnnotation = "route"

var (
	globalConfig    *cliconfig.Config
	globalConfigDir string

	serverFlag  string
	verboseFlag bool

	state *app
)

// app is what every command runs against, built once per invocation.
type app struct {
	logger   *zap.Logger
	session  *session.Context
	api      *client.Client
	profiles *storefront.ProfileResolver
	profile  *domain.UserProfile
	in       *bufio.Reader
	out      io.Writer
}

var rootCmd = &cobra.Command{
	Use:   "seacatering",
	Short: "SEA Catering storefront client",
	Long: `seacatering is a command-line storefront for SEA Catering.
Browse meal plans, estimate prices, subscribe and pay, manage your subscriptions and share reviews.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}
		return enforceRoute(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if state != nil {
			_ = state.logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute(ctx context.Context, cfg *cliconfig.Config, configDir string) error {
	globalConfig = cfg
	globalConfigDir = configDir
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command) error {
	logger := observability.NewConsoleLogger(verboseFlag)
	sess, err := session.Open(session.NewFileStore(globalConfigDir))
	if err != nil {
		return fmt.Errorf("error loading session: %w", err)
	}
	serverURL := globalConfig.ResolveServerURL(serverFlag)
	api := client.New(serverURL, sess)
	logger.Debug("storefront client ready", zap.String("server", serverURL), zap.Bool("signed_in", sess.Authenticated()))

	state = &app{
		logger:   logger,
		session:  sess,
		api:      api,
		profiles: storefront.NewProfileResolver(api, sess),
		in:       bufio.NewReader(cmd.InOrStdin()),
		out:      cmd.OutOrStdout(),
	}
	return nil
}

// enforceRoute applies the guard of the command's route before it runs.
func enforceRoute(cmd *cobra.Command) error {
	name, ok := cmd.Annotations[routeAnnotation]
	if !ok {
		return nil
	}
	route, ok := storefront.RouteByName(storefront.RouteName(name))
	if !ok {
		return fmt.Errorf("unknown route %q", name)
	}

	var profile *domain.UserProfile
	if route.Guard != storefront.GuardPublic && state.session.Authenticated() {
		p, err := state.profiles.Resolve(cmd.Context())
		switch {
		case err == nil:
			profile = &p
		case errors.Is(err, client.ErrUnauthenticated):
			yellow.Fprintln(state.out, "Your session has expired. Please log in again.")
		default:
			return fmt.Errorf("error loading profile: %w", err)
		}
	}

	nav := storefront.Navigate(route.Path, profile)
	if !nav.Redirected {
		state.profile = profile
		return nil
	}
	state.logger.Debug("route guard redirect", zap.String("route", name), zap.String("to", string(nav.Route.Name)))
	switch nav.Route.Name {
	case storefront.RouteLogin:
		return errors.New("you are not logged in, run `seacatering login` first")
	case storefront.RouteDashboard:
		return fmt.Errorf("already logged in as %s, run `seacatering logout` first", profile.Email)
	default:
		return errors.New("this command requires an administrator account")
	}
}

func routed(name storefront.RouteName) map[string]string {
	return map[string]string{routeAnnotation: string(name)}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Storefront API URL (overrides "+cliconfig.ServerURLEnv+" and the config file)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show debug logs")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(subscriptionsCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(testimonialsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(adminCmd)
}

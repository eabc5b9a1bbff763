// Package firestore is the document-store persistence adapter. Documents keep
// the camelCase field names of the legacy document backend; the repository
// mappers translate to and from the domain entities.
package firestore

import (
	"context"
	"log/slog"
	"os"

	"lamsa/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// Open initializes the Firestore client through the Firebase SDK and registers
// a close hook. When UseEmulator is set the standard emulator environment
// variable is exported before the client dials.
func Open(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	appendHook func(onStart func(context.Context) error, onStop func(context.Context) error),
) (*firestore.Client, error) {
	fsCfg := cfg.Storage.Firestore
	if fsCfg == nil {
		return nil, errors.New("storage.firestore configuration missing")
	}

	if fsCfg.UseEmulator && fsCfg.EmulatorHost != "" {
		if err := os.Setenv("FIRESTORE_EMULATOR_HOST", fsCfg.EmulatorHost); err != nil {
			return nil, errors.Wrap(err, "failed to set emulator host")
		}
		logger.Info("firestore emulator enabled", slog.String("host", fsCfg.EmulatorHost))
	}

	var opts []option.ClientOption
	if fsCfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(fsCfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: fsCfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firestore client")
	}

	appendHook(nil, func(context.Context) error {
		return client.Close()
	})

	return client, nil
}

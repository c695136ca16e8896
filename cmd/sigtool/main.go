package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/keyset"
	"github.com/keyweave/keyweave/registry"
	"github.com/keyweave/keyweave/signature"
)

var algorithmTypeURLs = map[string]string{
	"ecdsa-p256": signature.ECDSAP256PrivateKeyTypeURL,
	"ed25519":    signature.Ed25519PrivateKeyTypeURL,
	"ed448":      signature.Ed448PrivateKeyTypeURL,
}

var flagKeyset *cli.StringFlag = &cli.StringFlag{
	Name:  "keyset-file",
	Value: "keyset.yaml",
	Usage: "Path to the keyset file",
}
var flagAlgorithm *cli.StringFlag = &cli.StringFlag{
	Name:  "algorithm",
	Value: "ed25519",
	Usage: "Signature algorithm: ecdsa-p256, ed25519 or ed448",
}
var flagOut *cli.StringFlag = &cli.StringFlag{
	Name:  "out",
	Usage: "Output file path",
}
var flagMessage *cli.StringFlag = &cli.StringFlag{
	Name:  "message-file",
	Usage: "Path to the message being signed or verified",
}
var flagSignature *cli.StringFlag = &cli.StringFlag{
	Name:  "signature",
	Usage: "Base64-encoded signature to verify",
}
var flagLogJSON *cli.BoolFlag = &cli.BoolFlag{
	Name:  "log-json",
	Usage: "Log in JSON format",
}
var flagLogDebug *cli.BoolFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Usage: "Enable debug logging",
}
var flagLogUID *cli.BoolFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Usage: "Attach a random UID to all log lines",
}

func setupLogger(cCtx *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if cCtx.Bool(flagLogDebug.Name) {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cCtx.Bool(flagLogJSON.Name) {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler)
	if cCtx.Bool(flagLogUID.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func setupRegistry(logger *slog.Logger) (*registry.Registry, error) {
	r := registry.New(logger)
	if err := signature.Register(r); err != nil {
		return nil, fmt.Errorf("signature registration failed: %w", err)
	}
	return r, nil
}

func main() {
	app := &cli.App{
		Name:  "sigtool",
		Usage: "generate, rotate and use signing keysets",
		Flags: []cli.Flag{
			flagLogJSON,
			flagLogDebug,
			flagLogUID,
		},
		Commands: []*cli.Command{
			{
				Name:   "gen-keyset",
				Usage:  "generate a fresh single-key signing keyset",
				Flags:  []cli.Flag{flagKeyset, flagAlgorithm},
				Action: runGenKeyset,
			},
			{
				Name:   "rotate",
				Usage:  "add a new primary key, keeping old keys enabled",
				Flags:  []cli.Flag{flagKeyset, flagAlgorithm},
				Action: runRotate,
			},
			{
				Name:   "public",
				Usage:  "export the public half of a signing keyset",
				Flags:  []cli.Flag{flagKeyset, flagOut},
				Action: runPublic,
			},
			{
				Name:   "sign",
				Usage:  "sign a message with the keyset's primary key",
				Flags:  []cli.Flag{flagKeyset, flagMessage},
				Action: runSign,
			},
			{
				Name:   "verify",
				Usage:  "verify a signature against any enabled key",
				Flags:  []cli.Flag{flagKeyset, flagMessage, flagSignature},
				Action: runVerify,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runGenKeyset(cCtx *cli.Context) error {
	logger := setupLogger(cCtx)
	r, err := setupRegistry(logger)
	if err != nil {
		return err
	}

	typeURL, ok := algorithmTypeURLs[cCtx.String(flagAlgorithm.Name)]
	if !ok {
		return fmt.Errorf("unknown algorithm %q", cCtx.String(flagAlgorithm.Name))
	}

	m := keyset.NewManager(r)
	id, err := m.Rotate(typeURL)
	if err != nil {
		return err
	}
	handle, err := m.Handle()
	if err != nil {
		return err
	}

	path := cCtx.String(flagKeyset.Name)
	if err := storeKeysetFile(path, handle, ""); err != nil {
		return err
	}
	logger.Info("generated keyset", slog.String("path", path), slog.Uint64("primaryKeyID", uint64(id)))
	return nil
}

func runRotate(cCtx *cli.Context) error {
	logger := setupLogger(cCtx)
	r, err := setupRegistry(logger)
	if err != nil {
		return err
	}

	typeURL, ok := algorithmTypeURLs[cCtx.String(flagAlgorithm.Name)]
	if !ok {
		return fmt.Errorf("unknown algorithm %q", cCtx.String(flagAlgorithm.Name))
	}

	path := cCtx.String(flagKeyset.Name)
	handle, fileID, err := loadKeysetFile(path)
	if err != nil {
		return err
	}

	m := keyset.NewManagerFromHandle(r, handle)
	id, err := m.Rotate(typeURL)
	if err != nil {
		return err
	}
	rotated, err := m.Handle()
	if err != nil {
		return err
	}

	if err := storeKeysetFile(path, rotated, fileID); err != nil {
		return err
	}
	logger.Info("rotated keyset", slog.String("path", path), slog.Uint64("primaryKeyID", uint64(id)))
	return nil
}

func runPublic(cCtx *cli.Context) error {
	logger := setupLogger(cCtx)
	r, err := setupRegistry(logger)
	if err != nil {
		return err
	}

	handle, _, err := loadKeysetFile(cCtx.String(flagKeyset.Name))
	if err != nil {
		return err
	}
	public, err := handle.Public(r)
	if err != nil {
		return err
	}

	out := cCtx.String(flagOut.Name)
	if out == "" {
		out = "public-" + cCtx.String(flagKeyset.Name)
	}
	if err := storeKeysetFile(out, public, ""); err != nil {
		return err
	}
	logger.Info("exported public keyset", slog.String("path", out))
	return nil
}

func runSign(cCtx *cli.Context) error {
	logger := setupLogger(cCtx)
	r, err := setupRegistry(logger)
	if err != nil {
		return err
	}

	handle, _, err := loadKeysetFile(cCtx.String(flagKeyset.Name))
	if err != nil {
		return err
	}
	message, err := os.ReadFile(cCtx.String(flagMessage.Name))
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}

	set, err := keyset.Primitives[interfaces.Signer](r, handle)
	if err != nil {
		return err
	}
	signer, err := registry.Wrap(r, set)
	if err != nil {
		return err
	}
	sig, err := signer.Sign(message)
	if err != nil {
		return err
	}

	logger.Debug("signed message", slog.Int("messageBytes", len(message)))
	fmt.Println(base64.StdEncoding.EncodeToString(sig))
	return nil
}

func runVerify(cCtx *cli.Context) error {
	logger := setupLogger(cCtx)
	r, err := setupRegistry(logger)
	if err != nil {
		return err
	}

	handle, _, err := loadKeysetFile(cCtx.String(flagKeyset.Name))
	if err != nil {
		return err
	}
	message, err := os.ReadFile(cCtx.String(flagMessage.Name))
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	sig, err := base64.StdEncoding.DecodeString(cCtx.String(flagSignature.Name))
	if err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}

	// Accept either a public keyset or a private one, deriving the public
	// half on the fly.
	verifyHandle := handle
	set, err := keyset.Primitives[interfaces.Verifier](r, verifyHandle)
	if err != nil && interfaces.IsNotFound(err) {
		verifyHandle, err = handle.Public(r)
		if err != nil {
			return err
		}
		set, err = keyset.Primitives[interfaces.Verifier](r, verifyHandle)
	}
	if err != nil {
		return err
	}

	verifier, err := registry.Wrap(r, set)
	if err != nil {
		return err
	}
	if err := verifier.Verify(sig, message); err != nil {
		return err
	}
	logger.Info("signature verified")
	return nil
}

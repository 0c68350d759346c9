package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"

	"github.com/f3rmion/pointkey/bls"
	"github.com/f3rmion/pointkey/bls/gnark"
	"github.com/f3rmion/pointkey/config"
	"github.com/f3rmion/pointkey/logger"
	"github.com/f3rmion/pointkey/merkle"
	"github.com/f3rmion/pointkey/registry"
)

func main() {
	helpFlag := flag.Bool("help", false, "Show help message")
	generateFlag := flag.Bool("generate", false, "Generate a new BLS key pair")
	secretFlag := flag.String("secret", "", "0x-prefixed secret key to derive the public key from")
	decodeFlag := flag.String("decode", "", "0x-prefixed public key to validate")
	configFlag := flag.String("config", "", "Configuration file for building the validator registry")
	backendFlag := flag.String("backend", "", "Decoding backend: gnark or circl")
	flag.Parse()

	if *helpFlag {
		usage()
		return
	}

	// Utilities only log errors unless a config file says otherwise
	log, _ := logger.New(logger.Config{ConsoleOutput: true, Level: "error"})

	var err error
	switch {
	case *generateFlag:
		err = generate()
	case *secretFlag != "":
		err = derive(*secretFlag)
	case *decodeFlag != "":
		err = decode(*decodeFlag, *backendFlag)
	case *configFlag != "":
		err = build(*configFlag, *backendFlag)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msg("pointkey failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("BLS12-381 public key tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pointkey -generate                 Generate a new key pair")
	fmt.Println("  pointkey -secret <hex>             Derive the public key of a secret key")
	fmt.Println("  pointkey -decode <hex> [-backend]  Validate a compressed public key")
	fmt.Println("  pointkey -config <file> [-backend] Build and persist the validator registry")
	fmt.Println("  pointkey -help                     Show this help")
}

func generate() error {
	sk, err := gnark.RandomSecretKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate secret key: %w", err)
	}
	secret := sk.Serialize()
	fmt.Printf("Secret Key: 0x%x\n", secret[:])
	fmt.Printf("Public Key: %s\n", sk.PublicKey().HexString())
	return nil
}

func derive(secretHex string) error {
	data, err := bls.DecodeHex(secretHex)
	if err != nil {
		return err
	}
	sk, err := gnark.SecretKeyFromBytes(data)
	if err != nil {
		return err
	}
	fmt.Printf("Public Key: %s\n", sk.PublicKey().HexString())
	return nil
}

func decode(keyHex, backend string) error {
	decodeKey, err := registry.BackendDecoder(backend)
	if err != nil {
		return err
	}
	data, err := bls.DecodeHex(keyHex)
	if err != nil {
		return err
	}
	k, err := decodeKey(data)
	if err != nil {
		return err
	}
	root := k.HashTreeRootWith(merkle.Default)
	fmt.Printf("Public Key: %s\n", k.HexString())
	fmt.Printf("Tree Root:  0x%x\n", root[:])
	return nil
}

func build(path, backend string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Backend = backend
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	log = log.With().Str("backend", cfg.Backend).Logger()

	decodeKey, err := registry.BackendDecoder(cfg.Backend)
	if err != nil {
		return err
	}
	opts, err := cfg.Registry.Options()
	if err != nil {
		return err
	}
	m := metrics.NewRegistry()
	opts = append(opts, registry.WithLogger(log), registry.WithMetrics(m))
	r := registry.New(decodeKey, opts...)

	var store *registry.Store
	if cfg.Registry.Path != "" {
		store, err = registry.OpenStore(cfg.Registry.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Load(r, cfg.Registry.SkipInvalid)
		if err != nil {
			return err
		}
		log.Info().Int("keys", n).Str("path", store.Path()).Msg("loaded stored keys")
	}

	for i, v := range cfg.Validators {
		_, added, err := r.AddHex(v)
		if err != nil {
			if cfg.Registry.SkipInvalid && registry.IsMalformed(err) {
				continue
			}
			return fmt.Errorf("validator %d: %w", i, err)
		}
		if !added {
			log.Debug().Str("key", v).Msg("validator already registered")
		}
	}

	if store != nil {
		if err := store.Save(r); err != nil {
			return err
		}
		n, err := store.Len()
		if err != nil {
			return err
		}
		log.Info().Int("records", n).Msg("saved registry")
	}

	root, err := r.Root()
	if err != nil {
		return err
	}
	logStats(log, r.Stats())
	fmt.Printf("Validators: %d\n", r.Len())
	fmt.Printf("Registry Root: 0x%x\n", root[:])
	return nil
}

func logStats(log zerolog.Logger, s *registry.Stats) {
	log.Info().
		Int64("added", s.Added()).
		Int64("duplicates", s.Duplicates()).
		Int64("rejected", s.Rejected()).
		Msg("registry built")
}

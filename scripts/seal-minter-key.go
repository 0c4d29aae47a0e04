//go:build ignore

// Seals the custodial minter private key for storage in config.
//
// Run with: go run scripts/seal-minter-key.go -key <hex-private-key>
//
// Without an existing master key it generates a fresh one and prints it;
// export it as BIOMINT_MASTER_KEY before starting the server.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/veridlabs/biomint-middleware/pkg/keys"
)

func main() {
	privateKey := flag.String("key", "", "Minter private key (hex) to seal")
	masterEnv := flag.String("master-env", "BIOMINT_MASTER_KEY", "Environment variable holding the base64 master key")
	flag.Parse()

	if *privateKey == "" {
		fmt.Fprintln(os.Stderr, "usage: go run scripts/seal-minter-key.go -key <hex-private-key>")
		os.Exit(1)
	}

	var masterKey []byte
	if encoded := os.Getenv(*masterEnv); encoded != "" {
		var err error
		masterKey, err = keys.MasterKeyFromBase64(encoded)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid master key in %s: %v\n", *masterEnv, err)
			os.Exit(1)
		}
	} else {
		var err error
		masterKey, err = keys.GenerateMasterKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate master key: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated master key (export as %s):\n  %s\n\n", *masterEnv, keys.MasterKeyToBase64(masterKey))
	}

	sealed, err := keys.Seal([]byte(*privateKey), masterKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seal minter key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Sealed minter key (set as ethereum.minter_key_sealed in config):")
	fmt.Printf("  %s\n", sealed)
}

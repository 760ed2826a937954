// Command servicekey mints and inspects the HS256 role-claim keys a
// self-hosted table-store gateway accepts.
//
// Mint a key:
//
//	servicekey -secret <hmac-secret> -role anon -ttl 8760h
//
// Inspect an existing key without verifying it:
//
//	servicekey -inspect <key>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/youiz/dri-portal/internal/servicekey"
)

func main() {

	secret := flag.String("secret", "", "HMAC signing secret")
	role := flag.String("role", "anon", "database role claim (anon or service_role)")
	ttl := flag.Duration("ttl", 365*24*time.Hour, "key validity")
	inspect := flag.String("inspect", "", "decode the given key instead of minting one")
	flag.Parse()

	if *inspect != "" {
		claims, err := servicekey.Inspect(*inspect)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("role: %s\n", claims.Role)
		if claims.IssuedAt != nil {
			fmt.Printf("issued: %s\n", claims.IssuedAt.Format(time.RFC3339))
		}
		if claims.ExpiresAt != nil {
			fmt.Printf("expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))
		}
		return
	}

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "a -secret is required to mint a key")
		flag.Usage()
		os.Exit(2)
	}

	key, err := servicekey.Mint([]byte(*secret), *role, *ttl)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(key)

}

// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

// Command hashpw generates a bcrypt hash for an admin password, for
// seeding or resetting the credential out of band.
//
// Without flags it prompts for a password (no echo) and prints the
// hash. With -db it writes the credential straight into the gallery
// database:
//
//	hashpw                              # print a hash
//	hashpw -db gallery.db -user admin   # upsert the credential
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/auth"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/config"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/database"
)

func main() {
	dbPath := flag.String("db", "", "gallery database to write the credential into (print-only when empty)")
	username := flag.String("user", "admin", "username for the credential")
	flag.Parse()

	password, err := promptPassword()
	if err != nil {
		fatalf("reading password: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fatalf("hashing password: %v", err)
	}

	if *dbPath == "" {
		fmt.Println(hash)
		return
	}

	db, err := database.New(&config.DatabaseConfig{
		Path:         *dbPath,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	created, err := db.EnsureAdmin(ctx, *username, hash)
	if err != nil {
		fatalf("writing credential: %v", err)
	}
	if !created {
		if err := db.UpdatePasswordHash(ctx, *username, hash); err != nil {
			fatalf("updating credential: %v", err)
		}
	}
	fmt.Printf("Credential for %q written to %s\n", *username, *dbPath)
}

// promptPassword reads the password twice without echo and requires the
// entries to match. Falls back to a plain read when stdin is not a
// terminal, so the tool stays scriptable.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		var password string
		if _, err := fmt.Fscanln(os.Stdin, &password); err != nil {
			return "", err
		}
		return password, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(first), nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "hashpw: "+format+"\n", args...)
	os.Exit(1)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements vaultctl, the command-line client of the vault.
//
// Every command talks to the server through the HTTP adapter. Secrets are
// printed only by reveal; copy places them on the clipboard and blocks until
// the scheduled clear so the process can wipe the clipboard on interrupt.
package client

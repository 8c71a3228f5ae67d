// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive vault client.
//
// [Vault] is the client half of the protocol: it runs the two login steps
// through an [adapter.ServerAdapter], derives the content key from the
// password and the KDF parameters returned by the server, and encrypts and
// decrypts files locally. The key never leaves the process. [App] runs an
// interactive [UI] over a Vault and closes the session when the UI exits.
package client

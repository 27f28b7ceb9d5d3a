/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package mongostore

import "errors"

// ErrInvalidTimeout is returned for a negative connect timeout.
var ErrInvalidTimeout = errors.New("connect timeout must not be negative")

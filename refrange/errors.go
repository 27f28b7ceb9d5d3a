/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package refrange

import "errors"

// ErrInvalidArgument is returned when a caller breaks the parser contract,
// such as passing an unknown Sex override.
var ErrInvalidArgument = errors.New("invalid argument")

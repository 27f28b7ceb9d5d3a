/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package catalog

import "errors"

var errCatalogNotObject = errors.New("catalog JSON must be an object keyed by section name")

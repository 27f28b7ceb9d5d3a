/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package scraper

import "errors"

var (
	// ErrUnexpectedStatus is returned when the article responds with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrBodyTooLarge is returned when the article is larger than Fetch reads.
	ErrBodyTooLarge = errors.New("response body too large")
	// ErrNoSections is returned when the page has no h3 headings.
	ErrNoSections = errors.New("no reference range sections found")
)

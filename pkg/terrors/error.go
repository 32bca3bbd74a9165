// Copyright 2026 The Taller Authors, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package terrors

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrPlateRequired   = errors.New("plate is required")
	ErrCustomerMissing = errors.New("customer name is required")
	ErrEmptyBudget     = errors.New("budget has no items")
	ErrInvalidItem     = errors.New("budget item needs a description, a positive quantity and a non negative price")
	ErrUnknownDriver   = errors.New("unknown database driver")
)

// IsNotFound reports whether err is one of the not found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrBudgetNotFound)
}

// IsInvalid reports whether err was caused by bad input.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrPlateRequired) ||
		errors.Is(err, ErrCustomerMissing) ||
		errors.Is(err, ErrEmptyBudget) ||
		errors.Is(err, ErrInvalidItem)
}

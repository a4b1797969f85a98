// SPDX-License-Identifier: MIT

// Package kfold splits a dataset into k train/test folds for
// cross-validation, following the scikit-learn KFold layout: consecutive
// folds, the first n mod k of them one sample larger, with an optional
// seeded shuffle beforehand.
package kfold

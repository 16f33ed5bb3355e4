package goswitch

// Package goswitch provides:
//
// - Result[T, E] and Option[T], small tagged sum types with Match/Bind/Map
// - Aggregation of many results into one, with pluggable error merging
// - Bounded-parallel aggregation that keeps input order
// - Task/Action, the asynchronous shapes used by generated dispatch code
//
// The goswitch command (cmd/goswitch) generates exhaustive Match and Switch
// functions for sealed interfaces and enum-like constant types. Generated code
// imports this package for Task, Action and UnhandledVariant.
//
// Design policy:
// - Keep only runtime APIs in the root package; the generator lives under internal/.
// - Domain failures travel in Result payloads; Go errors are reserved for
//   infrastructure failures (cancellation) and programmer errors.
//
// Typical usage:
//
//  r := goswitch.Aggregate2(parseName(in), parseAge(in), newUser, goswitch.JoinLines)
//  msg := goswitch.Match(r, greet, func(e string) string { return "invalid: " + e })
//
//  all, err := goswitch.AggregateParallel(fetches, 4, goswitch.MergeIssues).Await(ctx)
//
//  area := MatchShape(s, circleArea, squareArea) // generated
//

// Package filter selects the brokers that satisfy a page's filter criteria.
//
// Filtering is the conjunction of independently optional dimensions: a
// dimension that is not set imposes no constraint, and a broker stays in the
// result only if it passes every dimension that is set. Within a dimension,
// regulators, platforms, account types, specialties and regions are any-of;
// features are all-of.
//
// Design decision: features, specialties and regions are closed enums, and
// each value maps to a predicate function in a lookup table. Tests assert
// that every value returned by model.AllFeatures, model.AllSpecialties and
// model.AllRegions has an entry, so adding an enum value without a predicate
// fails the build's test run instead of being silently ignored.
//
// Brokers whose leverage cannot be parsed are handled by an explicit Policy.
// UnknownInclusive (the default) keeps them; UnknownExclusive drops them.
package filter

// Package iir implements infinite impulse response filters with two
// internal representations: a direct-form transfer function sharing one
// delay line, and a cascade of second-order sections. The
// representation is fixed at construction; processing, frequency
// response and group delay give consistent results over both.
//
// Filters come from raw coefficients (NewDirect, NewSOS), from the
// design package (NewPrototype) or from special-purpose constructors
// (NewIntegrator, NewDifferentiator, NewDCBlocker, NewPLL).
package iir

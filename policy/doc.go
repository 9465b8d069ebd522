// Package policy provides optional declarative rules that can be applied on
// top of a running scheduler – for example to cap how deep nested parallel
// regions may go before inner regions fall back to sequential execution.
package policy

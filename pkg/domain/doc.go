/*
Package domain contains the core domain models for the Arbor engine.

It defines the decision tree entities (Tree, Node, Choice, Rule), the walk
audit record (Trail), and the load-time error taxonomy. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Tree: an id-keyed directed graph of decision nodes, immutable after load.
  - Node: a single decision point (End, SingleChoice, Number, or Text).
  - Choice / Rule: outgoing edges matched against free-text input.
  - Trail: the recorded steps and outcome of one traversal.
*/
package domain

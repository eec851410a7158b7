/*
Package arbor is a decision-tree traversal engine.

It loads a declarative tree definition (JSON or YAML), statically validates
its structural soundness (reference integrity, acyclicity, reachability),
and drives step-by-step traversal using free-text answers to choose the next
node. The engine is read-only after load: a tree is validated off to the
side and published atomically, so any number of concurrent walks can run
against the active tree without coordination.

# Quick Start

	eng, err := arbor.New("triage.json")
	if err != nil {
		log.Fatal(err)
	}

	node, _ := eng.StartNode()
	for !node.IsTerminal() {
		answer := ask(node.Prompt) // human or AI oracle
		next, ok := eng.Next(node.ID, answer)
		if !ok {
			break
		}
		node = next
	}
	fmt.Println("outcome:", node.Prompt)

For full traversals with an audit trail, use Walker with an Oracle; the
trail can be persisted through a ports.TrailStore (in-memory or Redis
adapters are provided). Collaborator surfaces live under pkg/adapters: an
HTTP API for tree editors and an MCP server for AI oracles.
*/
package arbor

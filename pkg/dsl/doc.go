/*
Package dsl provides a fluent builder for constructing decision trees
programmatically, instead of writing JSON or YAML by hand. Trees are
validated on Build, so the result is always safe to load.

Example usage:

	tree, err := dsl.New("triage").
		Start("q_category").
		Choice("q_category", "What kind of issue is this?").
		Option("billing", "Billing Issue", "q_amount").
		Option("outage", "Service Outage", "end_oncall").
		Otherwise("end_support").
		Done().
		Number("q_amount", "What is the disputed amount?").
		Rule("<", "100", "end_refund").
		Otherwise("end_review").
		Done().
		End("end_refund", "Refund issued automatically").
		End("end_review", "Escalated to manual review").
		End("end_oncall", "Paged the on-call engineer").
		End("end_support", "Routed to general support").
		Build()
*/
package dsl

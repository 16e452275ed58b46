// Tagboard - cloud resource tagging and cost governance dashboard.
// Load a resource inventory CSV, slice it, find the untagged spend.
package main

func main() {
	Execute()
}

// Command oflpack packs OpenFlow 1.3 multipart reply records written as
// YAML or flow text and prints the wire bytes.
package main

func main() {
	Execute()
}

// Command ledgerctl tareas de operación del libro: migraciones, nodos virtuales y datos demo.
package main

func main() {
	Execute()
}

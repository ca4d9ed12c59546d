package evm

// memorySizeFunc returns the memory end offset an operation will touch,
// computed from the operands still on the stack.
type memorySizeFunc func(*Stack) (uint64, error)

func memoryKeccak256(stack *Stack) (uint64, error) {
	return calcMemSize64(stack.Back(0), stack.Back(1))
}

func memoryCodeCopy(stack *Stack) (uint64, error) {
	return calcMemSize64(stack.Back(0), stack.Back(2))
}

func memoryMLoad(stack *Stack) (uint64, error) {
	return calcMemSize64WithUint(stack.Back(0), 32)
}

func memoryMStore8(stack *Stack) (uint64, error) {
	return calcMemSize64WithUint(stack.Back(0), 1)
}

func memoryMStore(stack *Stack) (uint64, error) {
	return calcMemSize64WithUint(stack.Back(0), 32)
}

func memoryReturn(stack *Stack) (uint64, error) {
	return calcMemSize64(stack.Back(0), stack.Back(1))
}

func memoryRevert(stack *Stack) (uint64, error) {
	return calcMemSize64(stack.Back(0), stack.Back(1))
}

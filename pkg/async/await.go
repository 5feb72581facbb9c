package async

func Await[R any](a <-chan R) R {
	return <-a
}

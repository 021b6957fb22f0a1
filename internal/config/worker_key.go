package config

type WorkerKeyStruct struct {
	AdmissionMailQueue string
}

var WorkerKey = &WorkerKeyStruct{
	AdmissionMailQueue: "admission_mail_queue",
}
